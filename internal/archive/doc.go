// Package archive rotates the result history database out of the way.
package archive

// Package batch reads files of IPA transcriptions for bulk validation.
package batch

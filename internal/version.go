package internal

// Version is the ipacheck release version
const Version = "0.1.0"

package ofdvalidator

// Version is the ofd-validator release version.
const Version = "0.3.0"

// Package store keeps key material and run results in an INI document.
//
// The document layout is
//
//	[Private]
//	PrimeOne=5000999921
//	PrimeTwo=4999999937
//
//	[Public]
//	Generator=65537
//	PublicKey=25004999289937004977
//
//	[SecretText]
//	Text=RSA-algoritmasinin-frekans-degeri-risklidir!
//	Seed=NULL
//
//	[EncryptedText]
//	Encrypted=
//
//	[EncryptedHex]
//	Hex=
//
//	[DecryptedText]
//	Decrypted=
//
// Updates always read the whole document, change it in memory and write the
// whole document back.
//
// Text and Seed are used as written, quotes included. Whitespace directly
// after '=' and at the end of a line is not part of a value.
//
// Writes temporarily set ini.PrettyFormat to false. Other code in the process
// that saves ini.v1 files at the same moment sees that setting.
package store

// Package pipeline sequences one end-to-end run: load key material, derive
// the key pair, encode, encrypt, decrypt, decode and publish.
//
// Stages run strictly in order and a failure stops the run. The failing stage
// is reported through *StageError, which unwraps to the underlying cause so
// callers can still match the textrsa sentinels with errors.Is.
//
// The private exponent and totient are zeroized before Run returns.
package pipeline

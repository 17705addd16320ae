// Package logging provides the logging facade used across textrsa.
//
// Logger wraps the subset of log/slog that the pipeline needs, with
// context-aware methods so a run id attached by the caller travels with every
// record:
//
//	logger := logging.New(nil) // slog.Default()
//	logger = logger.With("run_id", id)
//	logger.Info(ctx, "keys derived", "modulus_bits", n.BitLen(), logging.Redacted("private_exponent"))
//
// FromSettings builds a Logger from validated Settings, writing text or JSON to
// stderr or to a size-rotated file.
//
// # Security Considerations
//
//   - Never log primes, the totient or the private exponent
//   - Use logging.Redacted() to mark where a secret was deliberately omitted
//   - The modulus and generator are public and may be logged
package logging

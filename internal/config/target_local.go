//go:build !production

package config

// CurrentTarget returns the target selected at build time.
// Build with -tags production to talk to the hosted relay.
func CurrentTarget() Target {
	return LocalTarget()
}

//go:build production

package config

// CurrentTarget returns the target selected at build time.
func CurrentTarget() Target {
	return ProductionTarget()
}

package condition

// Evaluate reports whether the condition holds in env. And and Or
// short-circuit. Missing files and unset flags are ordinary states, so
// evaluation never fails.
func (n *Node) Evaluate(env *Env) bool {
	switch n.kind {
	case KindAlways:
		return true

	case KindAnd:
		for _, child := range n.children {
			if child != nil && !child.Evaluate(env) {
				return false
			}
		}
		return true

	case KindOr:
		if len(n.children) == 0 {
			return true
		}
		for _, child := range n.children {
			if child != nil && child.Evaluate(env) {
				return true
			}
		}
		return false

	case KindFile:
		exists := env.fileExists(n.path)
		if n.state == FilePresent {
			return exists
		}
		return !exists

	case KindFlag:
		return n.evaluateFlag(env)

	case KindGameVersion:
		if env.Versions == nil {
			env.logger().Error().Str("version", n.version).Msg("No version checker configured; game version check fails")
			return false
		}
		return env.Versions.GameVersion(n.version)

	case KindInstallerVersion:
		if env.Versions == nil {
			env.logger().Error().Str("version", n.version).Msg("No version checker configured; installer version check fails")
			return false
		}
		return env.Versions.InstallerVersion(n.version)
	}

	return false
}

func (n *Node) evaluateFlag(env *Env) bool {
	actual, ok := env.Flags[n.flag]
	if ok {
		return actual == n.value
	}
	if n.value != "" {
		return false
	}
	if env.UnsetFlags == UnsetNeverMatches {
		return false
	}
	env.warnUnsetFlag(n.flag)
	return true
}

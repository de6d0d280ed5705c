package expr

// Equal reports structural equality: same kind and recursively equal children.
// Constants compare by value, variables by identity.
// Complexity: O(size) in the worst case; cached hashes reject most mismatches in O(1).
func Equal(a, b Node) bool {
	// 1) Identical pointers (including shared subexpressions) are trivially equal.
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch x := a.(type) {
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.value == y.value
	case *Variable:
		// Distinct pointers are distinct identities.
		return false
	case *Function:
		y, ok := b.(*Function)
		if !ok || x.kind != y.kind || x.hash != y.hash || len(x.args) != len(y.args) {
			return false
		}
		for i := range x.args {
			if !Equal(x.args[i], y.args[i]) {
				return false
			}
		}
		return true
	}

	return false
}

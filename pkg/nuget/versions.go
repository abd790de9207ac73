package nuget

import "strings"

// AlternativeVersions lists other spellings under which a package version
// may have been stored. The version is padded to four segments with zeros,
// then shortened one segment at a time; the original spelling is skipped and
// generation stops after the first candidate that does not end in ".0".
//
//	1.2.0.0 -> 1.2.0, 1.2
//	1.0     -> 1.0.0.0, 1.0.0, 1
func AlternativeVersions(version string) []string {
	parts := strings.Split(version, ".")
	for len(parts) < 4 {
		parts = append(parts, "0")
	}

	var out []string
	for i := 4; i > 0; i-- {
		v := strings.Join(parts[:i], ".")
		if v != version {
			out = append(out, v)
		}
		if !strings.HasSuffix(v, ".0") {
			break
		}
	}
	return out
}

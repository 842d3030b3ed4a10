package hal

import "strings"

// ParseCmdLine splits a boot command line into key/value pairs. Tokens are
// separated by whitespace and have the form key=value; a token without a
// value maps its key to itself. Later tokens override earlier ones.
func ParseCmdLine(cmdLine string) map[string]string {
	kv := make(map[string]string)
	for _, token := range strings.Fields(cmdLine) {
		parts := strings.SplitN(token, "=", 2)
		if len(parts) == 1 || parts[1] == "" {
			kv[parts[0]] = parts[0]
			continue
		}

		kv[parts[0]] = parts[1]
	}

	return kv
}

package config

import "strings"

// windowsReserved are device names that cannot be used as directory names on
// Windows.
var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// ValidateName checks a project or context name. Names become directory
// names under the config dir, so traversal sequences, separators, control
// characters, and reserved words are all rejected.
func ValidateName(name string) error {
	if name == "" {
		return &InvalidNameError{Name: name, Reason: "name cannot be empty"}
	}
	if len(name) > 255 {
		return &InvalidNameError{Name: name, Reason: "name too long (max 255 chars)"}
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return &InvalidNameError{Name: name, Reason: "name cannot contain path separators or '..'"}
	}
	if name == "." {
		return &InvalidNameError{Name: name, Reason: "name cannot be '.'"}
	}

	first := name[0]
	if !isAlpha(first) && first != '_' {
		return &InvalidNameError{Name: name, Reason: "name must start with a letter or underscore"}
	}

	for _, c := range name {
		if c < 0x20 || c == 0x7f {
			return &InvalidNameError{Name: name, Reason: "name cannot contain control characters"}
		}
		if !isAlphaNum(byte(c)) && c != '-' && c != '_' {
			return &InvalidNameError{Name: name, Reason: "only letters, digits, '-' and '_' are allowed"}
		}
	}

	if windowsReserved[strings.ToUpper(name)] {
		return &InvalidNameError{Name: name, Reason: "name is a reserved word"}
	}

	return nil
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

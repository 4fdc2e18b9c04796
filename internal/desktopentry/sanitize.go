package desktopentry

import "strings"

// fieldCodes are the exec placeholders stripped before launch. Anything
// else after a '%' is left alone.
var fieldCodes = strings.NewReplacer(
	"%f", "",
	"%F", "",
	"%u", "",
	"%U", "",
	"%i", "",
	"%c", "",
	"%k", "",
)

// Sanitize removes the file, URL, icon, name and location field codes from an
// exec template and trims the result.
func Sanitize(exec string) string {
	// A single pass can join "%%ff" into a new "%f", so repeat until stable.
	for {
		cleaned := fieldCodes.Replace(exec)
		if cleaned == exec {
			break
		}
		exec = cleaned
	}
	return strings.TrimSpace(exec)
}

// Fields sanitizes exec and splits it on whitespace runs. The first field is
// the program. No shell quoting is honored.
func Fields(exec string) []string {
	return strings.Fields(Sanitize(exec))
}

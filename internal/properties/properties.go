// Package properties reads and writes the version.properties file shared
// with the Gradle build.
package properties

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jimdowning-cyclops/semver-release-go/internal/version"
)

// DefaultFile is the file name used when none is configured.
const DefaultFile = "version.properties"

const (
	keyMajor = "majorVersion"
	keyMinor = "minorVersion"
	keyPatch = "patchVersion"
	keyBuild = "buildNumber"
)

// Exists reports whether path is a readable file with content.
func Exists(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return len(data) > 0
}

// Read loads the version stored at path.
func Read(path string) (version.Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return version.Version{}, fmt.Errorf("failed to read version file: %w", err)
	}
	return Parse(string(data)), nil
}

// Write stores v at path, replacing its content.
func Write(path string, v version.Version) error {
	if err := os.WriteFile(path, []byte(Format(v)), 0644); err != nil {
		return fmt.Errorf("failed to write version file: %w", err)
	}
	return nil
}

// Parse reads the key=value lines of a version file.
// Missing or malformed numbers are read as 0.
func Parse(content string) version.Version {
	values := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return version.Version{
		Major: number(values[keyMajor]),
		Minor: number(values[keyMinor]),
		Patch: number(values[keyPatch]),
		Build: values[keyBuild],
	}
}

// Format renders v as the four lines of a version file.
func Format(v version.Version) string {
	return strings.Join([]string{
		fmt.Sprintf("%s=%d", keyMajor, v.Major),
		fmt.Sprintf("%s=%d", keyMinor, v.Minor),
		fmt.Sprintf("%s=%d", keyPatch, v.Patch),
		fmt.Sprintf("%s=%s", keyBuild, v.Build),
	}, "\n")
}

func number(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

package komari

import "fmt"

const (
	major = 0
	minor = 1
	patch = 0
)

func StringVersion() string {
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch)
}

// Package platform reports facts about the Linux host environment that help
// explain a container detection verdict. Since these facts are informational,
// anything that cannot be determined is reported as its zero value rather
// than as an error.
package platform

// Package libnotes is the Go client of the notes server API.
package libnotes

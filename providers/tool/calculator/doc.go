// Package calculator provides a local arithmetic tool. It runs entirely
// in-process, which makes it handy for exercising multi-step tool loops.
package calculator

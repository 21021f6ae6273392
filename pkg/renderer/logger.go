package renderer

import (
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// KlogLogger implements core.Logger on top of klog at a fixed verbosity
type KlogLogger struct {
	level klog.Level
}

func (kl *KlogLogger) Printf(format string, args ...interface{}) {
	klog.V(kl.level).Infof(strings.TrimSuffix(format, "\n"), args...)
}

// NewKlogLogger creates a logger that writes through klog at verbosity level
func NewKlogLogger(level klog.Level) core.Logger {
	return &KlogLogger{level: level}
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

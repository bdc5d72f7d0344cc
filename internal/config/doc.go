// Package config provides configuration structures and utilities for utep.
// It defines the application-level options plus one configuration struct per
// experiment, holding every axis, protocol, noise, detection, and fit
// constant the pipelines consume. Theory predictions are plain data here;
// nothing in the analysis derives or validates them.
package config

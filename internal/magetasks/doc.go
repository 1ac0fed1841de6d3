// Package magetasks provides organized build tasks for the trendline project.
//
// This package contains the build, test, lint and sample-rendering tasks
// used by the Magefile. Tasks are grouped into namespaces there.
package magetasks

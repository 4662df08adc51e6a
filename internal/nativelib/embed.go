package nativelib

import "embed"

// bundled holds the embedded native library tree: engine metadata plus, when
// the build ships them, one library per platform tag under
// libs/crfsuite-<version>/<tag>/.
//
//go:embed all:libs
var bundled embed.FS

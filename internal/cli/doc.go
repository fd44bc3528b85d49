// Package cli locates the RNAfold binary, builds its fixed command line and
// stdin payload, and checks the installed version.
//
// # Discovery
//
// The Discoverer searches, in order:
//  1. The system PATH
//  2. Common installation directories (/usr/local/bin, /usr/bin,
//     ~/.local/bin, $CONDA_PREFIX/bin)
//
// The command line itself is fixed: "RNAfold --noPS". Sequence data only
// ever travels on stdin:
//
//	payload := cli.BuildInput(seq) // "<SEQUENCE>\n@\n"
//
// # Version Validation
//
// CheckVersion runs "RNAfold --version" and compares the result against
// MinimumVersion. It is never called on the fold path, which starts exactly
// one process per request. Setting RNAFOLD_SKIP_VERSION_CHECK disables it.
package cli

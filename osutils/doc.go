// Package osutils holds file system helpers missing from os and
// path/filepath: checksums and fingerprints of files, filtered walks and
// listings, idempotent directory creation, temporary file names, and
// strict environment variable expansion.
package osutils

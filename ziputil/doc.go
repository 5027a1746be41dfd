// Package ziputil writes directory trees into zip archives and compares
// archives by their member names and CRCs. Archives are produced with
// github.com/klauspost/compress/zip, a faster drop-in for archive/zip.
package ziputil

// Package prefs persists user preferences as a two-level document of
// regions and variables.
//
// A Store creates its parent directory on construction, loads whatever
// is on disk, and saves after every Set. Unreadable or malformed files
// never fail the caller: the store resets to empty and reports through
// the OnLoadError hook. Watch reloads the store when another process
// rewrites the file.
package prefs

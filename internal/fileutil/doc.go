// Package fileutil lists the PNG files a rename batch operates on.
//
// Listing is deliberately shallow: only regular files directly inside
// the target directory with a case-insensitive .png extension are
// eligible; subdirectories are never traversed. The three sort modes
// (name, modified, created) determine the order sequence numbers are
// assigned in. Name ordering is natural, so frame2.png sorts before
// frame10.png.
package fileutil

// Command winnow finds duplicate media assets whose bytes differ but whose
// normalized content is identical, and optionally collapses the duplicates
// via hard links, symlinks, or relocation to a trash directory.
package main

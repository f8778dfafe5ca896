// Package compendium reads, edits and repackages Encounter+ compendiums.
//
// A compendium is either a bare compendium.xml file or a zip archive
// (.compendium or .zip) holding compendium.xml next to its media. The XML is
// kept as an xmlquery node tree so that saving reproduces every element,
// attribute, comment and whitespace run the editor did not touch.
//
// The Merger is the only writer: it adds or replaces the <image> or <token>
// child of a single <monster> or <item> element and reserves an archive name
// for the file it references under monsters/ or items/.
package compendium

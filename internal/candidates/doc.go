// Package candidates discovers image and token files on disk and holds them
// in a consumable pool keyed by normalized name.
//
// An Index is built once per role. The matcher asks it for the best scoring
// remaining file for each compendium entry and consumes files as they are
// bound, so no file backs two entries of the same role. Ties go to the file
// listed first, which keeps repeated runs over the same inputs identical.
package candidates

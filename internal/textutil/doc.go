// Package textutil provides text processing utilities for name normalization,
// fuzzy similarity, and filename sanitization.
//
// The primary use cases are:
//   - Canonicalizing compendium entry names and image file names so they can
//     be compared (Normalize, StripWords)
//   - Scoring how alike two normalized names are on a 0-100 scale (Score)
//   - Deriving archive member names for embedded files (AssetName)
//
// Scores take the best of several strategies: a full-string edit ratio, a
// token-sort ratio, a token-set ratio, and a word-aligned containment bonus.
// This keeps reordered words ("Boss Goblin") and partial names ("Orc" against
// "Orc Chieftain") from collapsing to the plain edit ratio.
package textutil

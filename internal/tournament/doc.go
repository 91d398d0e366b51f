// Package tournament runs complete tournaments on a game.Table, loading
// seats, blinds and sandbox limits from an HCL file, and aggregates batches
// of tournaments over consecutive seeds.
package tournament

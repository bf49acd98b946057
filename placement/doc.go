// Package placement holds the in-memory model of the enemies and foods placed
// on a level: their kinds, tags, positions and render handles.
//
// Tags are derived from (kind, number) and are renumbered after a removal so
// that each kind always reads enemy1..enemyN. Render surfaces must refer to
// entities through their Handle, which is stable across renumbering.
package placement

package hooks

// Cleanup undoes an effect. It runs before the effect's next execution and
// when the instance is disposed.
type Cleanup func()

// UseEffect records fn to run after the current render is committed.
//
// With nil deps the effect runs after every render. Otherwise it runs after
// the first render and whenever deps differ (by Same) from the list the
// effect last ran with, so a render that was never committed cannot
// suppress a later one. fn may return nil when it has nothing to clean up.
func UseEffect(fn func() Cleanup, deps Deps) {
	f := active("UseEffect")
	cell, _ := claim(f, KindEffect, func() *effectCell { return &effectCell{} })
	cell.next, cell.nextDeps = fn, deps
	cell.shouldRun = !cell.ran || deps == nil || !DepsEqual(cell.deps, deps)
}

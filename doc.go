/*
Package leveledit persists level editor scenes as inert, declarative scene files.

A scene file is never executed. It is parsed into typed records and handed to the
editor's object manager, which owns the in-memory scene graph and rebuilds it.

# Concept

The editor ("Host") owns its objects. leveledit only moves them between memory and
storage: the object manager produces a sequence of records on save and consumes a
validated scene on load. Everything in between (file layout, codecs, stores, locking)
lives behind small interfaces in pkg/ports.

# Usage

	objects := memory.NewObjects()
	mgr := filemgr.New(objects, filemgr.WithLogger(logger))

	if err := mgr.SaveToFile(ctx, "levels/castle"); err != nil {
		var perr *domain.PersistError
		if errors.As(err, &perr) && perr.Kind == domain.KindWrite {
			// disk full, permission denied, ...
		}
	}

	scene, err := mgr.LoadFromFile(ctx, "levels/castle")

# Scene files

The default ".scene" format is a fixed four line header followed by one JSON record
per line:

	%leveledit scene/1
	%manager objectMgr
	# temporary place holder for node handles
	%handles {}
	{"id":"a1","type":"model","model":"models/tree.egg","pos":[0,0,0]}

A YAML document (".yaml", ".yml") carrying the same records is also accepted.

# Stores

Named levels can be kept in a directory, in memory, in Redis or in PostgreSQL. The
level package serializes access to each level name and can take a distributed lock.
*/
package leveledit

/*
Package filemgr persists a level editor's scene to a file and loads it back.

A Manager holds a reference to the editor's object manager for its whole lifetime.
SaveToFile asks the object manager for one record per editable object and writes them
after a fixed header; LoadFromFile parses a previously saved file into typed records and
hands them back to the object manager for reconstruction.

Scene files are inert documents (see package codec). Loading never executes anything.

	mgr := filemgr.New(editor.Objects(), filemgr.WithLogger(logger))
	if err := mgr.SaveToFile(ctx, "levels/castle.scene"); err != nil {
		if domain.IsKind(err, domain.KindCollect) {
			// the editor could not serialize its objects
		}
	}
*/
package filemgr

// Package argv marshals Go argument strings into a native argument vector.
//
// A Vector owns one NUL-terminated buffer per argument and an array of
// pointers to their first bytes. The buffers are pinned while the vector is
// handed to the runtime and released by Free right after the call returns;
// the runtime copies what it needs and never keeps the pointers.
//
//	vec, err := argv.Encode([]string{"prog", "-c", "pass"})
//	if err != nil {
//	    return err // *errors.Error with KindEncoding
//	}
//	defer vec.Free()
//	st := eng.SetBytesArgv(cfg, vec.Len(), vec.Argv())
//
// SetArgv does all of the above and checks the returned status.
package argv

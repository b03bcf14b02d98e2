// Package hook buffers a plugin's action and filter bindings until the host
// is ready to receive them.
//
// Components declare bindings during setup. Nothing reaches the host until
// Run is called, at which point every buffered filter and then every
// buffered action is handed to the host's Registrar in insertion order.
//
// Example usage:
//
//	loader := hook.NewLoader(hook.WithLogger(logger))
//
//	loader.AddFilter("init", hook.Bind(admin, "Setup", admin.Setup))
//	loader.AddAction("save_post", hook.Bind(admin, "OnSave", admin.OnSave),
//	    hook.WithPriority(5), hook.WithAcceptedArgs(2))
//
//	// Later, once the host dispatcher exists
//	loader.Run(host)
//
// A Loader is not safe for concurrent use. It is meant to be owned by the
// plugin's bootstrap sequence.
package hook

// Package shutdown coordinates graceful teardown of the snipsync server.
//
// The server registers one hook per subsystem (HTTP listener, capture
// watcher, sync engine, local store). Hooks run in reverse order of
// registration when SIGINT or SIGTERM arrives, so resources close after
// their users, bounded by a single timeout.
//
// Usage:
//
//	sd := shutdown.NewHandler(10 * time.Second)
//	sd.OnShutdown(store.CloseHook)
//	sd.OnShutdown(httpServer.Shutdown)
//	return sd.Wait()
package shutdown

package server

// Server is a transport the application can run. RunServer blocks until the
// listener stops; Shutdown drains in-flight requests and closes it.
type Server interface {
	RunServer()
	Shutdown()
}

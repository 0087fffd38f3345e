package b

type IRouteHandler interface{ Serve() }

type Closer interface{ Close() error }

type Index struct{} // want `DEMO001: Index is missing Route\. Methods in types implementing IRouteHandler should be decorated with Route\.`

func (Index) Serve() {}

//demolint:attribute Route
type About struct{}

func (About) Serve() {}

type Conn struct{}

func (Conn) Close() error { return nil }

var conn Conn

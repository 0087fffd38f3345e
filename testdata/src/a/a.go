package a

type IMyInterface interface{ Handle() }

type IDisposable interface{ Dispose() }

type Foo struct{} // want `DEMO001: Foo is missing MyAttribute\. Methods in types implementing IMyInterface should be decorated with MyAttribute\.`

func (Foo) Handle() {}

//demolint:attribute MyAttribute
type Bar struct{}

func (Bar) Handle() {}

type MyDisposable struct{}

func (d *MyDisposable) Dispose() {}

var MyDisposableVar = &MyDisposable{} // want `DEMO002: MyDisposableVar, which implements IDisposable, is assigned to a static member`

var other any = &MyDisposable{}

type Holder struct {
	res *MyDisposable
}

func Init() {
	MyDisposableVar = &MyDisposable{} // want `DEMO002: MyDisposableVar, which implements IDisposable, is assigned to a static member`

	h := Holder{}
	h.res = &MyDisposable{}
	_ = h

	local := &MyDisposable{}
	local = nil
	_ = local
	_ = other
}

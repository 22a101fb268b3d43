package interfaces

type CheckerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}

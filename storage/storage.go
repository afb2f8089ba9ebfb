package storage

// Storage is an ordered container exposing the minimal put/get/len contract
// every channel discipline needs. Get on an empty Storage is undefined at
// this layer; callers must guard with Empty or Len first.
type Storage[E any] interface {
	Put(e E)
	Get() E
	Len() int
	Empty() bool
}

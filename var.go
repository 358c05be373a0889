package ggfx

// Var is a settable input with explicit observers.
//
// Shaders subscribe to a Var with Observe (usually through
// UniformSet.BindFloat) and cancel the subscription themselves when they are
// destroyed. Var holds no reference back to its observers beyond the
// callbacks registered here.
type Var[T any] struct {
	value     T
	observers []varObserver[T]
	nextID    int
}

type varObserver[T any] struct {
	id int
	fn func(T)
}

// NewVar creates a Var holding v.
func NewVar[T any](v T) *Var[T] {
	return &Var[T]{value: v}
}

// Get returns the current value.
func (v *Var[T]) Get() T { return v.value }

// Set stores value and notifies observers in registration order.
func (v *Var[T]) Set(value T) {
	v.value = value
	for _, o := range v.observers {
		o.fn(value)
	}
}

// Observe registers fn to be called on every Set. The returned function
// removes the observer; calling it more than once is a no-op.
func (v *Var[T]) Observe(fn func(T)) (cancel func()) {
	id := v.nextID
	v.nextID++
	v.observers = append(v.observers, varObserver[T]{id: id, fn: fn})
	return func() {
		for i, o := range v.observers {
			if o.id == id {
				v.observers = append(v.observers[:i], v.observers[i+1:]...)
				return
			}
		}
	}
}

// Observers returns the number of registered observers.
func (v *Var[T]) Observers() int { return len(v.observers) }

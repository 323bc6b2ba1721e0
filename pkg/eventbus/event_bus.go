// Package eventbus dispatches in-process events to subscribed handlers.
// Handlers are plain functions; a published event reaches every handler
// whose parameter list the event arguments are assignable to.
package eventbus

import (
	"reflect"

	"github.com/sirupsen/logrus"
)

type EventBus interface {
	Publish(args ...any)
	Subscribe(handler any)
}

type publisher struct {
	log      *logrus.Logger
	handlers []any
}

func NewEventPublisher(log *logrus.Logger) EventBus {
	return &publisher{log: log}
}

func (p *publisher) Subscribe(handler any) {
	if reflect.TypeOf(handler).Kind() != reflect.Func {
		panic("eventbus: handler must be a function")
	}
	p.handlers = append(p.handlers, handler)
}

// Publish invokes every matching handler synchronously, in subscription
// order. A panicking handler is recovered and logged so one bad subscriber
// cannot take down the publisher.
func (p *publisher) Publish(args ...any) {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}

	handled := false
	for _, handler := range p.handlers {
		if !matches(handler, args) {
			continue
		}
		v := reflect.ValueOf(handler)
		func() {
			defer func() {
				if r := recover(); r != nil {
					if p.log != nil {
						p.log.Errorf("eventbus: handler %s panicked: %v", v.Type(), r)
					}
				}
			}()
			v.Call(in)
			handled = true
		}()
	}

	if !handled && p.log != nil {
		p.log.Warnf("eventbus: no subscriber for event %v", args)
	}
}

func matches(handler any, args []any) bool {
	t := reflect.TypeOf(handler)
	if t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		param := t.In(i)
		if arg == nil {
			if param.Kind() != reflect.Interface && param.Kind() != reflect.Ptr {
				return false
			}
			continue
		}
		argType := reflect.TypeOf(arg)
		if param.Kind() == reflect.Interface {
			if !argType.Implements(param) {
				return false
			}
			continue
		}
		if !argType.AssignableTo(param) {
			return false
		}
	}
	return true
}

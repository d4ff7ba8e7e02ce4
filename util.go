package mmal

import "fmt"

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf("mmal: "+fmsg, args...))
}

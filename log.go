package main

import (
	"time"

	"k8s.io/klog"
)

// klogAdapter routes the bot api logging through klog.
type klogAdapter struct {
}

func (*klogAdapter) Println(args ...interface{}) {
	klog.Infoln(append([]interface{}{"bot api:"}, args...)...)
}

func (*klogAdapter) Printf(format string, args ...interface{}) {
	klog.Infof("bot api: "+format, args...)
}

func newTimer(action string) func() {
	start := time.Now()
	return func() {
		klog.V(1).Infof("%s took %v", action, time.Since(start))
	}
}

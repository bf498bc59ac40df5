package guictx_test

import (
	"fmt"
	"log"

	"github.com/uiforge/gui-runtime/engine"
	"github.com/uiforge/gui-runtime/errors"
	"github.com/uiforge/gui-runtime/guictx"
)

// Parking the active context makes room for a second one; activating the
// parked context later resumes it.
func Example_suspendAndActivate() {
	eng := engine.NewNativeEngine()

	first, err := guictx.Create(eng)
	if err != nil {
		log.Fatal(err)
	}

	parked := first.Suspend()

	second, err := guictx.Create(eng)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("second is current:", second.IsCurrent())

	if err := second.Close(); err != nil {
		log.Fatal(err)
	}

	first, err = parked.Activate()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("first is current:", first.IsCurrent())

	if err := first.Close(); err != nil {
		log.Fatal(err)
	}

	// Output:
	// second is current: true
	// first is current: true
}

// Only one context can be current; a second Create reports contention
// instead of disturbing the active one.
func ExampleCreate_contention() {
	eng := engine.NewNativeEngine()

	active, err := guictx.Create(eng)
	if err != nil {
		log.Fatal(err)
	}
	defer active.Close()

	_, err = guictx.Create(eng)
	fmt.Println("contention:", errors.IsContextActive(err))

	// Output:
	// contention: true
}

func ExampleContext_SaveIniSettings() {
	eng := engine.NewNativeEngine()

	ctx, err := guictx.Create(eng)
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Close()

	ctx.LoadIniSettings("[Window][Debug##Default]\nPos=60,60\nSize=400,400\nCollapsed=0\n")
	fmt.Print(ctx.SaveIniSettings())

	// Output:
	// [Window][Debug##Default]
	// Pos=60,60
	// Size=400,400
	// Collapsed=0
}

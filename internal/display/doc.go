// Package display holds the viewer's state machine, independent of how
// the image is drawn.
//
// A Controller starts idle, moves to showing once the first record is
// displayed, and terminates when its window is closed:
//
//	ctrl := display.NewController()
//	if ctrl.Start() == display.ActionRoll {
//	    // roll and then ctrl.Show(result.Record)
//	}
//
//	switch ctrl.Handle(display.MousePress{Window: ctrl.ID(), Button: display.ButtonLeft}) {
//	case display.ActionRoll:
//	    // roll again
//	case display.ActionQuit:
//	    // exit
//	}
package display

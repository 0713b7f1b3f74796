package surface

import "testing"

type recordingListener struct {
	seen    []PointerKind
	consume bool
}

func (r *recordingListener) HandlePointer(ev *PointerEvent) {
	r.seen = append(r.seen, ev.Kind)
	if r.consume {
		ev.Consume()
	}
}

func TestDispatcherStopsAtConsumer(t *testing.T) {
	var d Dispatcher
	first := &recordingListener{consume: true}
	second := &recordingListener{}
	d.Register(first)
	d.Register(second)

	if !d.Dispatch(&PointerEvent{Kind: PointerClicked}) {
		t.Fatal("event should be reported consumed")
	}
	if len(first.seen) != 1 || len(second.seen) != 0 {
		t.Fatalf("first saw %d, second saw %d; want 1 and 0", len(first.seen), len(second.seen))
	}
}

func TestDispatcherPropagatesUnconsumed(t *testing.T) {
	var d Dispatcher
	a, b := &recordingListener{}, &recordingListener{}
	d.Register(a)
	d.Register(b)
	if d.Dispatch(&PointerEvent{Kind: PointerEntered}) {
		t.Fatal("nobody consumed the event")
	}
	if len(a.seen) != 1 || len(b.seen) != 1 {
		t.Fatal("both listeners should see an unconsumed event")
	}
}

func TestDispatcherRegisterDeduplicates(t *testing.T) {
	var d Dispatcher
	l := &recordingListener{}
	d.Register(l)
	d.Register(l)
	d.Register(nil)
	if d.Len() != 1 {
		t.Fatalf("Len = %d, want 1", d.Len())
	}
}

func TestPointerKindString(t *testing.T) {
	if PointerClicked.String() != "clicked" || PointerKind(42).String() != "unknown" {
		t.Fatal("unexpected PointerKind names")
	}
}

func TestButtonClickRequiresStationaryPointer(t *testing.T) {
	var b Button
	if ev := b.Press(10, 20); ev == nil || ev.Kind != PointerPressed {
		t.Fatalf("Press = %+v", ev)
	}
	if ev := b.Press(11, 20); ev != nil {
		t.Fatalf("second Press while down = %+v, want nil", ev)
	}
	rel, click := b.Release(10, 20)
	if rel == nil || rel.Kind != PointerReleased {
		t.Fatalf("Release = %+v", rel)
	}
	if click == nil || click.Kind != PointerClicked || click.X != 10 || click.Y != 20 {
		t.Fatalf("click = %+v, want clicked at (10,20)", click)
	}
	if b.Down() {
		t.Fatal("button still down after release")
	}
}

func TestButtonDragIsNotAClick(t *testing.T) {
	var b Button
	b.Press(-5, 100)
	rel, click := b.Release(200, 100)
	if rel == nil {
		t.Fatal("release after a drag must still be reported")
	}
	if click != nil {
		t.Fatalf("drag produced click %+v", click)
	}
}

func TestButtonReleaseWithoutPress(t *testing.T) {
	var b Button
	if rel, click := b.Release(1, 1); rel != nil || click != nil {
		t.Fatalf("Release without press = %+v, %+v", rel, click)
	}
}

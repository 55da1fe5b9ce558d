package halsim

import "testing"

func TestGPIOSetAndReadBack(t *testing.T) {
	s := NewSimulator()
	g := s.GPIO(0)
	if err := g.Set(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.GPIOState(0) {
		t.Fatal("expected GPIO 0 to read back high")
	}
}

func TestPWMSetAndReadBack(t *testing.T) {
	s := NewSimulator()
	p := s.PWM(1)
	if err := p.SetDuty(-500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.PWMDuty(1); got != -500 {
		t.Fatalf("expected duty -500, got %d", got)
	}
}

func TestEncoderReflectsSetCount(t *testing.T) {
	s := NewSimulator()
	s.SetEncoderCount(0, 1234)
	enc := s.Encoder(0)
	got, err := enc.Count()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1234 {
		t.Fatalf("expected count 1234, got %d", got)
	}
}

func TestSPIReturnsPushedFramesInOrder(t *testing.T) {
	s := NewSimulator()
	var f1, f2 [64]byte
	f1[0] = 1
	f2[0] = 2
	s.PushFrame(f1)
	s.PushFrame(f2)

	spi := s.SPI()
	cmd, length, data, err := spi.ReadFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd != 0x01 || length != 64 || data[0] != 1 {
		t.Fatalf("unexpected first frame: cmd=%d len=%d data[0]=%d", cmd, length, data[0])
	}
	_, _, data2, err := spi.ReadFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data2[0] != 2 {
		t.Fatalf("expected second frame data[0]=2, got %d", data2[0])
	}
}

func TestSPIReadFrameErrorsWhenEmpty(t *testing.T) {
	s := NewSimulator()
	_, _, _, err := s.SPI().ReadFrame()
	if err == nil {
		t.Fatal("expected error reading from an empty frame queue")
	}
}

func TestClockAdvancesByAmountRequested(t *testing.T) {
	s := NewSimulator()
	clk := s.Clock()
	if clk.NowMillis() != 0 {
		t.Fatalf("expected clock to start at 0, got %d", clk.NowMillis())
	}
	s.Advance(250)
	if clk.NowMillis() != 250 {
		t.Fatalf("expected clock at 250, got %d", clk.NowMillis())
	}
}

package lux_nav

import (
	"fmt"
	"net"
)

// OutputSender sends wheel commands over UDP as CSV.
type OutputSender struct {
	conn *net.UDPConn
}

// NewOutputSender creates a UDP sender for the given address. An empty
// address yields a no-op sender.
func NewOutputSender(addr string) (*OutputSender, error) {
	if addr == "" {
		return &OutputSender{}, nil
	}
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, err
	}
	return &OutputSender{conn: conn}, nil
}

// Close releases the UDP socket.
func (s *OutputSender) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Send writes "left,right,phase" as a CSV payload.
func (s *OutputSender) Send(cmd WheelCommand) {
	if s == nil || s.conn == nil {
		return
	}
	payload := fmt.Sprintf("%.4f,%.4f,%s", cmd.Left, cmd.Right, cmd.Phase.String())
	_, _ = s.conn.Write([]byte(payload))
}

// SendDone emits the one-shot mission-complete indicator datagram.
func (s *OutputSender) SendDone() {
	if s == nil || s.conn == nil {
		return
	}
	_, _ = s.conn.Write([]byte("DONE"))
}

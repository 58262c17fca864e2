package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pitopd/internal/client"
)

const (
	defaultRequestAddr   = "tcp://127.0.0.1:3782"
	defaultBroadcastAddr = "tcp://127.0.0.1:3781"
)

type commandContext struct {
	requestFlag   *string
	broadcastFlag *string
	timeoutFlag   *time.Duration
}

func newCommandContext(requestFlag, broadcastFlag *string, timeoutFlag *time.Duration) *commandContext {
	return &commandContext{
		requestFlag:   requestFlag,
		broadcastFlag: broadcastFlag,
		timeoutFlag:   timeoutFlag,
	}
}

func (c *commandContext) requestAddr() string {
	if c.requestFlag != nil && strings.TrimSpace(*c.requestFlag) != "" {
		return strings.TrimSpace(*c.requestFlag)
	}
	return defaultRequestAddr
}

func (c *commandContext) broadcastAddr() string {
	if c.broadcastFlag != nil && strings.TrimSpace(*c.broadcastFlag) != "" {
		return strings.TrimSpace(*c.broadcastFlag)
	}
	return defaultBroadcastAddr
}

func (c *commandContext) timeout() time.Duration {
	if c.timeoutFlag != nil && *c.timeoutFlag > 0 {
		return *c.timeoutFlag
	}
	return 2 * time.Second
}

func (c *commandContext) withRequester(fn func(*client.Requester) error) error {
	addr := c.requestAddr()
	req, err := client.DialRequester(context.Background(), addr, c.timeout())
	if err != nil {
		return fmt.Errorf("connect to daemon at %s: %w", addr, err)
	}
	defer req.Close()
	return fn(req)
}

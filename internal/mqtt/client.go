// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package mqtt publishes time signals to an MQTT broker: a retained
// per-second pulse and a retained health message that follows status
// transitions.
package mqtt

import (
	"fmt"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/segmentio/ksuid"

	"github.com/platform-engineering-labs/tickd/internal/config"
)

const (
	keepAlive      = 30 * time.Second
	connectTimeout = 10 * time.Second
	publishQoS     = 1
)

// Publisher is the broker surface the publishing tasks depend on.
type Publisher interface {
	Publish(subtopic string, payload []byte, retain bool) error
}

type Client struct {
	mqtt      pahomqtt.Client
	baseTopic string
}

func NewClient(mqttConfig *config.MQTTConfig) (*Client, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(brokerAddress(mqttConfig.Broker)).
		SetClientID("tickd-" + ksuid.New().String()).
		SetKeepAlive(keepAlive).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	if mqttConfig.Username != "" {
		opts.SetUsername(mqttConfig.Username)
		opts.SetPassword(mqttConfig.Password)
	}

	client := pahomqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", mqttConfig.Broker, token.Error())
	}

	return &Client{
		mqtt:      client,
		baseTopic: mqttConfig.BaseTopic,
	}, nil
}

func (c *Client) Publish(subtopic string, payload []byte, retain bool) error {
	topic := c.baseTopic + "/" + subtopic
	token := c.mqtt.Publish(topic, publishQoS, retain, payload)
	token.Wait()
	return token.Error()
}

func (c *Client) Close() {
	c.mqtt.Disconnect(250)
}

// brokerAddress maps the mqtt:// and mqtts:// schemes the config accepts
// onto the tcp:// and ssl:// schemes paho understands.
func brokerAddress(broker string) string {
	if after, ok := strings.CutPrefix(broker, "mqtts://"); ok {
		return "ssl://" + after
	}
	if after, ok := strings.CutPrefix(broker, "mqtt://"); ok {
		return "tcp://" + after
	}
	return broker
}

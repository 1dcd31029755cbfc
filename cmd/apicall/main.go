package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"

	apiclient "github.com/GriffinCanCode/apiclient"
	"github.com/GriffinCanCode/apiclient/config"
	"github.com/GriffinCanCode/apiclient/errs"
)

func main() {
	method := flag.String("method", "GET", "HTTP method (GET, POST, PUT, PATCH, DELETE)")
	path := flag.String("path", "/", "Request path relative to the configured root")
	data := flag.String("data", "", "JSON request body for write methods")
	cfgPath := flag.String("config", "", "Config file (.yaml or .toml); empty reads APICALL_* env vars")
	headers := flag.String("header", "", "Extra call headers as k1:v1,k2:v2")
	timeout := flag.Duration("timeout", 0, "Override the configured request timeout")
	dev := flag.Bool("dev", false, "Development mode (colored logs, debug level)")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *dev {
		cfg.Logging = config.LogConfig{Level: "debug", Development: true}
	}

	client, err := apiclient.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	opts, err := headerOptions(*headers)
	if err != nil {
		log.Fatalf("Bad -header value: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	payload, err := execute(ctx, client, strings.ToUpper(*method), *path, *data, opts)
	if err != nil {
		log.Fatalf("Request failed (%s): %v", errs.Kind(err), err)
	}

	out, err := sonic.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render payload: %v", err)
	}
	fmt.Println(string(out))
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.FromFile(path)
	}
	return config.FromEnv("APICALL")
}

func execute(ctx context.Context, client *apiclient.Client, method, path, data string, opts []apiclient.CallOption) (any, error) {
	var body any
	if data != "" {
		body = []byte(data)
	}

	switch method {
	case "GET":
		return client.Get(ctx, path, opts...)
	case "POST":
		return client.Post(ctx, path, body, opts...)
	case "PUT":
		return client.Put(ctx, path, body, opts...)
	case "PATCH":
		return client.Patch(ctx, path, body, opts...)
	case "DELETE":
		return client.Delete(ctx, path, opts...)
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
}

func headerOptions(raw string) ([]apiclient.CallOption, error) {
	if raw == "" {
		return nil, nil
	}

	var opts []apiclient.CallOption
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("expected k:v, got %q", pair)
		}
		opts = append(opts, apiclient.WithHeader(strings.TrimSpace(k), strings.TrimSpace(v)))
	}
	return opts, nil
}

package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/appbuilder/abcore/diag"
	"github.com/appbuilder/abcore/object"
	"github.com/appbuilder/abcore/process"
	"github.com/appbuilder/abcore/task"
	"github.com/appbuilder/abcore/tasks"
	"github.com/appbuilder/abcore/tester"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

//go:embed process.yaml
var definition []byte

var person = map[string]any{
	"id":    "person",
	"label": "Person",
	"fields": []any{
		map[string]any{"id": "name", "key": "string", "label": "Name", "columnName": "name"},
		map[string]any{"id": "email", "key": "email", "label": "Email", "columnName": "email"},
		map[string]any{"id": "birthday", "key": "date", "label": "Birthday", "columnName": "birthday"},
	},
}

func main() {
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("abcore sample"),
		semconv.ServiceVersionKey.String("v0.1.0"),
		attribute.String("environment", "sample"),
	)

	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		panic(err)
	}

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exp),
		trace.WithResource(r),
	)
	defer tp.Shutdown(ctx)

	objects := object.NewCachedRegistry(func(ctx context.Context, id string) (*object.Object, error) {
		if id != "person" {
			return nil, nil
		}

		return object.NewObject(person)
	}, 100, time.Minute, logger)

	p, err := process.LoadYAML(definition, process.WithTaskOptions(
		task.WithLogger(logger),
		task.WithObjects(objects),
		task.WithReporter(diag.NewLogReporter(logger)),
	))
	if err != nil {
		panic(err)
	}

	fmt.Println("Available process data:")
	for _, f := range p.DataFields("") {
		fmt.Printf("\t%s\t%s\n", f.Key, f.Label)
	}

	pt := tester.NewProcessTester(p, tester.WithLogger(logger), tester.WithTracerProvider(tp))

	if _, err := pt.Trigger(ctx, "person", "added", object.Record{
		"uuid":     "d5b7b4b0-6d3e-4f7a-9a67-0c4a4a1c2e01",
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"birthday": "1815-12-10",
	}); err != nil {
		panic(err)
	}

	fmt.Println("Waiting on:", pt.Suspended())
	fmt.Println("Name:", p.ProcessData(pt.Instance(), "created.name"))
	fmt.Println("Email domain:", p.ProcessData(pt.Instance(), "created.email.domain"))
	fmt.Println("Born:", p.ProcessData(pt.Instance(), "created.birthday.year"))

	approval := p.Task("manager").(*tasks.Approval)
	if err := approval.Submit(pt.Instance(), approval.Config().UserFormID, map[string]any{"approved": true}); err != nil {
		panic(err)
	}

	if err := pt.Resume(ctx); err != nil {
		panic(err)
	}

	fmt.Println("Status:", pt.Instance().Status())
}

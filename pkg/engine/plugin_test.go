package engine

import (
	"testing"
)

// recordingPlugin implements every hook and records the calls it sees.
type recordingPlugin struct {
	name  string
	log   *[]string
	build func(*NodeDef) *NodeDef
}

func (p *recordingPlugin) BuildNode(d *NodeDef) *NodeDef {
	*p.log = append(*p.log, p.name+":build")
	if p.build != nil {
		return p.build(d)
	}
	return nil
}

func (p *recordingPlugin) RemoveNode(d *NodeDef) *NodeDef {
	*p.log = append(*p.log, p.name+":remove")
	return nil
}

func (p *recordingPlugin) Mount(roots []*NodeDef, ctx *MountContext) {
	*p.log = append(*p.log, p.name+":mount")
}

func (p *recordingPlugin) Unmount(roots []*NodeDef, ctx *MountContext) {
	*p.log = append(*p.log, p.name+":unmount")
}

func (p *recordingPlugin) Destroy() {
	*p.log = append(*p.log, p.name+":destroy")
}

func TestPluginPriorityOrder(t *testing.T) {
	t.Cleanup(ResetPlugins)
	ResetPlugins()

	var log []string
	RegisterPlugin(&recordingPlugin{name: "low", log: &log}, WithPriority(5))
	RegisterPlugin(&recordingPlugin{name: "high", log: &log}, WithPriority(10))

	newEngine(t, &NodeDef{Tag: "div"})
	if len(log) != 2 || log[0] != "high:build" || log[1] != "low:build" {
		t.Errorf("log = %v, want high before low", log)
	}
}

func TestPluginStableTieBreak(t *testing.T) {
	t.Cleanup(ResetPlugins)
	ResetPlugins()

	var log []string
	RegisterPlugin(&recordingPlugin{name: "first", log: &log})
	RegisterPlugin(&recordingPlugin{name: "second", log: &log})

	newEngine(t, &NodeDef{Tag: "div"})
	if len(log) != 2 || log[0] != "first:build" || log[1] != "second:build" {
		t.Errorf("log = %v, want registration order on equal priority", log)
	}
}

func TestPluginReRegistrationUpdatesPriority(t *testing.T) {
	t.Cleanup(ResetPlugins)
	ResetPlugins()

	var log []string
	p := &recordingPlugin{name: "p", log: &log}
	RegisterPlugin(p, WithPriority(1))
	RegisterPlugin(&recordingPlugin{name: "other", log: &log}, WithPriority(5))
	RegisterPlugin(p, WithPriority(10))

	newEngine(t, &NodeDef{Tag: "div"})
	if len(log) != 2 || log[0] != "p:build" {
		t.Errorf("log = %v, re-registration should lift p above other", log)
	}
}

func TestBuildHookSubstitution(t *testing.T) {
	t.Cleanup(ResetPlugins)
	ResetPlugins()

	var log []string
	RegisterPlugin(&recordingPlugin{name: "sub", log: &log, build: func(d *NodeDef) *NodeDef {
		if d.Tag == "placeholder" {
			return &NodeDef{Tag: "section", Ref: d.Ref}
		}
		return nil
	}})

	e := newEngine(t, &NodeDef{Tag: "placeholder", Ref: "x"})
	if tag := e.RefDef("x").Element().TagName(); tag != "section" {
		t.Errorf("tag = %q, substituted definition should be built", tag)
	}
}

func TestSubstitutionThreadsThroughPipeline(t *testing.T) {
	t.Cleanup(ResetPlugins)
	ResetPlugins()

	var log []string
	var seenByLow string
	RegisterPlugin(&recordingPlugin{name: "low", log: &log, build: func(d *NodeDef) *NodeDef {
		seenByLow = d.Tag
		return nil
	}}, WithPriority(5))
	RegisterPlugin(&recordingPlugin{name: "high", log: &log, build: func(d *NodeDef) *NodeDef {
		return &NodeDef{Tag: "substituted"}
	}}, WithPriority(10))

	newEngine(t, &NodeDef{Tag: "original"})
	if seenByLow != "substituted" {
		t.Errorf("low-priority hook saw %q, want the high-priority substitute", seenByLow)
	}
}

func TestPluginLifecycleDispatch(t *testing.T) {
	t.Cleanup(ResetPlugins)
	ResetPlugins()

	var log []string
	RegisterPlugin(&recordingPlugin{name: "p", log: &log})

	_, host, e := hostAndEngine(t, &NodeDef{Tag: "div"})
	if err := e.Mount(&MountOptions{Target: host}); err != nil {
		t.Fatal(err)
	}
	if err := e.Unmount(); err != nil {
		t.Fatal(err)
	}
	if err := e.Destroy(); err != nil {
		t.Fatal(err)
	}

	want := []string{"p:build", "p:mount", "p:unmount", "p:destroy", "p:remove"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestSnapshotIsolatesLateRegistration(t *testing.T) {
	t.Cleanup(ResetPlugins)
	ResetPlugins()

	var log []string
	e := newEngine(t, &NodeDef{Tag: "div", Ref: "r"})
	RegisterPlugin(&recordingPlugin{name: "late", log: &log})

	if _, err := e.AddNode(&NodeDef{Tag: "span"}, e.RefDef("r")); err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Errorf("log = %v, late plugin must not see an existing instance", log)
	}
}

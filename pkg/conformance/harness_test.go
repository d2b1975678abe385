package conformance

import "testing"

func TestDefaultScenariosAllPass(t *testing.T) {
	pool := NewPool(4)
	results := pool.Run(DefaultScenarios())

	if len(results) != len(DefaultScenarios()) {
		t.Fatalf("got %d results, want %d", len(results), len(DefaultScenarios()))
	}
	report, failed := Summarize(results)
	if failed != 0 {
		t.Errorf("conformance scenarios failed:\n%s", report)
	}
}

func TestPoolIsolatesCpuInstances(t *testing.T) {
	scenarios := make([]Scenario, 50)
	for i := range scenarios {
		a := uint8(i)
		scenarios[i] = Scenario{
			Name: "isolation",
			Run: func() error {
				c, _ := NewIsolatedCpu()
				c.A = a
				for j := 0; j < 1000; j++ {
					if c.A != a {
						return errIsolationBroken
					}
				}
				return nil
			},
		}
	}

	pool := NewPool(8)
	results := pool.Run(scenarios)
	_, failed := Summarize(results)
	if failed != 0 {
		t.Errorf("%d scenarios observed cross-talk between Cpu instances", failed)
	}
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

const planarXY = "../kinematics/data/planar_xy.json"

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app := NewApp(out, errOut)
	err := app.RunContext(context.Background(), append([]string{"cdpr"}, args...))
	return out.String(), errOut.String(), err
}

func TestRayAction(t *testing.T) {
	out, _, err := runApp(t, "--model", planarXY, "ray", "--free", "0", "--lo", "-1", "--hi", "1", "--fixed", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "100.00")

	_, errOut, err := runApp(t, "--model", planarXY, "ray", "--free", "0", "--lo", "-1", "--hi", "1", "--fixed", "3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "no wrench closure intervals")

	logFile := filepath.Join(t.TempDir(), "cdpr.log")
	_, _, err = runApp(t, "--debug", "--log-file", logFile, "--model", "../kinematics/data/planar_xy_offset.json5",
		"ray", "--free", "0", "--lo", "-1", "--hi", "1")
	test.That(t, err, test.ShouldBeNil)
	logs, err := os.ReadFile(logFile)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(logs), test.ShouldContainSubstring, "ray evaluated")

	_, _, err = runApp(t, "ray", "--free", "0", "--lo", "-1", "--hi", "1", "--fixed", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--model")

	_, _, err = runApp(t, "--model", planarXY, "ray", "--free", "0", "--lo", "-1", "--hi", "1", "--fixed", "0,1")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "--model", planarXY, "ray", "--free", "0", "--lo", "-1", "--hi", "1", "--fixed", "zero")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "--model", planarXY, "ray", "--free", "0", "--lo", "-1", "--hi", "1", "--fixed", "0", "--tolerance", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRayActionRotational(t *testing.T) {
	out, errOut, err := runApp(t, "--debug", "--model", "../kinematics/data/planar_xytheta_crossed.json", "ray",
		"--free", "2", "--lo", "-1", "--hi", "1", "--fixed", "0,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "ray evaluated")
	test.That(t, out, test.ShouldContainSubstring, "LO (DEG)")
	test.That(t, out, test.ShouldContainSubstring, "HI (DEG)")
	test.That(t, out, test.ShouldContainSubstring, "-0.23749")
	test.That(t, out, test.ShouldContainSubstring, "0.599053")
	test.That(t, out, test.ShouldContainSubstring, "41.83")
	test.That(t, out, test.ShouldContainSubstring, "-13.61")
	test.That(t, out, test.ShouldContainSubstring, "34.32")

	// the uncrossed platform is never in wrench closure on this ray
	out, errOut, err = runApp(t, "--model", "../kinematics/data/planar_xytheta.json", "ray",
		"--free", "2", "--lo", "-0.5", "--hi", "0.5", "--fixed", "0,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldBeEmpty)
	test.That(t, errOut, test.ShouldContainSubstring, "no wrench closure intervals")

	_, _, err = runApp(t, "--model", "../kinematics/data/planar_xytheta.json", "ray",
		"--free", "2", "--lo", "-4", "--hi", "0", "--fixed", "0,0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "(-pi, pi)")
}

func TestSweepAction(t *testing.T) {
	plotFile := filepath.Join(t.TempDir(), "sweep.png")
	out, errOut, err := runApp(t, "--model", planarXY, "sweep",
		"--free", "0", "--lo", "-1", "--hi", "1", "--grid", "0,3", "--plot", plotFile)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "[-1, 1]")
	test.That(t, out, test.ShouldContainSubstring, "none")
	test.That(t, out, test.ShouldContainSubstring, "50.00")
	test.That(t, errOut, test.ShouldContainSubstring, "wrote plot")
	_, err = os.Stat(plotFile)
	test.That(t, err, test.ShouldBeNil)

	out, _, err = runApp(t, "--model", planarXY, "sweep", "--free", "0", "--lo", "0", "--hi", "1", "--grid", "-0.5:0.5:3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "100.00")

	_, _, err = runApp(t, "--model", planarXY, "sweep", "--free", "0", "--lo", "0", "--hi", "1", "--grid", "0:1")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParseGridValues(t *testing.T) {
	values, err := parseGridValues("1, 2,3.5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, values, test.ShouldResemble, []float64{1, 2, 3.5})

	values, err = parseGridValues("0:1:5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, values, test.ShouldResemble, []float64{0, 0.25, 0.5, 0.75, 1})

	_, err = parseGridValues("0:1:0")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = parseGridValues("a:1:2")
	test.That(t, err, test.ShouldNotBeNil)

	values, err = parseFloats("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, values, test.ShouldBeEmpty)

	g := &gridValue{}
	test.That(t, g.Set("0,1"), test.ShouldBeNil)
	test.That(t, g.Set("2"), test.ShouldBeNil)
	test.That(t, g.values, test.ShouldResemble, [][]float64{{0, 1}, {2}})
	test.That(t, g.String(), test.ShouldEqual, "0,1 2")
}

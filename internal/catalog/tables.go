package catalog

import (
	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/dimension"
)

// Extra members are Go templates: {{.Type}} is the unit's own Go type and
// {{type "name"}} resolves another unit's Go type.

var siBase = []entry{
	{name: "s", summary: "second", varName: "time", vec: 1, powers: []pow{{dimension.S, 1}}},
	{name: "kg", summary: "kilogram", varName: "mass", vec: 1, powers: []pow{{dimension.Kg, 1}}, fields: []string{
		`func {{.Type}}FromG(grams float32) {{.Type}} { return {{.Type}}(grams * 1e-3) }`,
		`func {{.Type}}FromT(tons float32) {{.Type}} { return {{.Type}}(tons * 1e3) }`,
	}},
	{name: "m", summary: "meter", varName: "length", vec: 1, powers: []pow{{dimension.M, 1}}, fields: []string{
		`func {{.Type}}FromMm(millimeters float32) {{.Type}} { return {{.Type}}(millimeters * 1e-3) }`,
		`func {{.Type}}FromKm(kilometers float32) {{.Type}} { return {{.Type}}(kilometers * 1e3) }`,
	}},
	{name: "A", summary: "ampere", varName: "electricCurrent", vec: 1, powers: []pow{{dimension.A, 1}}},
	{name: "K", summary: "kelvin", varName: "thermodynamicTemperature", vec: 1, powers: []pow{{dimension.K, 1}}},
	{name: "mol", summary: "mole", varName: "amountOfSubstance", vec: 1, powers: []pow{{dimension.Mol, 1}}},
	{name: "cd", summary: "candela", varName: "luminousIntensity", vec: 1, powers: []pow{{dimension.Cd, 1}}},
}

var siSpecial = []entry{
	{name: "Hz", summary: "hertz: frequency", varName: "frequency", vec: 1, powers: []pow{{dimension.S, -1}}},
	{name: "N", summary: "newton: force", varName: "force", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, 1}, {dimension.S, -2}}},
	{name: "Pa", summary: "pascal: pressure, stress", varName: "pressure", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, -1}, {dimension.S, -2}}},
	{name: "J", summary: "joule: energy, work, amount of heat", varName: "energy", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, 2}, {dimension.S, -2}}},
	{name: "W", summary: "watt: power, radiant flux", varName: "power", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, 2}, {dimension.S, -3}}},
	{name: "C", summary: "coulomb: electric charge", varName: "electricCharge", vec: 1, powers: []pow{{dimension.S, 1}, {dimension.A, 1}}},
	{name: "V", summary: "volt: electric potential, voltage", varName: "voltage", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, 2}, {dimension.S, -3}, {dimension.A, -1}}},
	{name: "F", summary: "farad: capacitance", varName: "capacitance", vec: 1, powers: []pow{{dimension.Kg, -1}, {dimension.M, -2}, {dimension.S, 4}, {dimension.A, 2}}},
	{name: "Ohm", summary: "ohm: resistance", varName: "resistance", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, 2}, {dimension.S, -3}, {dimension.A, -2}}},
	{name: "S", summary: "siemens: electrical conductance", varName: "conductance", vec: 1, powers: []pow{{dimension.Kg, -1}, {dimension.M, -2}, {dimension.S, 3}, {dimension.A, 2}}},
	{name: "Wb", summary: "weber: magnetic flux", varName: "magneticFlux", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, 2}, {dimension.S, -2}, {dimension.A, -1}}},
	{name: "T", summary: "tesla: magnetic flux density", varName: "magneticFluxDensity", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.S, -2}, {dimension.A, -1}}},
	{name: "H", summary: "henry: inductance", varName: "inductance", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, 2}, {dimension.S, -2}, {dimension.A, -2}}},
	{name: "lm", summary: "lumen: luminous flux", varName: "luminousFlux", vec: 1, powers: []pow{{dimension.Cd, 1}, {dimension.Rad, 2}}},
	{name: "lx", summary: "lux: illuminance", varName: "illuminance", vec: 1, powers: []pow{{dimension.Cd, 1}, {dimension.Rad, 2}, {dimension.M, -2}}},
	{name: "kat", summary: "katal: catalytic activity", varName: "catalyticActivity", vec: 1, powers: []pow{{dimension.Mol, 1}, {dimension.S, -1}}},
}

// Coherent units have no special name; their names are rendered from the dimension.
var coherent = []entry{
	{summary: "area: m²", varName: "area", vec: 1, powers: []pow{{dimension.M, 2}}},
	{summary: "volume: m³", varName: "volume", vec: 1, powers: []pow{{dimension.M, 3}}},
	{summary: "speed: m/s", varName: "speed", vec: 1, powers: []pow{{dimension.M, 1}, {dimension.S, -1}}},
	{summary: "acceleration: m/s²", varName: "accel", vec: 1, powers: []pow{{dimension.M, 1}, {dimension.S, -2}}},
	{summary: "reciprocal metre", varName: "wavenumber", vec: 1, powers: []pow{{dimension.M, -1}}},
	{summary: "kilogram per cubic metre", varName: "density", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, -3}}},
	{summary: "kilogram per square metre", varName: "surfaceDensity", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, -2}}},
	{summary: "cubic metre per kilogram", varName: "specificVolume", vec: 1, powers: []pow{{dimension.M, 3}, {dimension.Kg, -1}}},
	{summary: "ampere per square metre", varName: "currentDensity", vec: 1, powers: []pow{{dimension.A, 1}, {dimension.M, -2}}},
	{summary: "ampere per metre", varName: "magneticFieldStrength", vec: 1, powers: []pow{{dimension.A, 1}, {dimension.M, -1}}},
	{summary: "mole per cubic metre", varName: "concentration", vec: 1, powers: []pow{{dimension.Mol, 1}, {dimension.M, -3}}},
	{summary: "candela per square metre", varName: "luminance", vec: 1, powers: []pow{{dimension.Cd, 1}, {dimension.M, -2}}},
}

var derivedFromSpecial = []entry{
	{name: "Pas", summary: "pascal-second: dynamic viscosity", varName: "dynamicViscosity", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.M, -1}, {dimension.S, -1}}},
	{name: "Npm", summary: "newton per metre: surface tension", varName: "surfaceTension", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.S, -2}}},
	{name: "radps2", summary: "radian per second squared: angular acceleration", varName: "angularAcceleration", vec: 1, powers: []pow{{dimension.S, -2}}},
	{name: "Wpm2", summary: "watt per square metre: heat flux density, irradiance", varName: "heatFluxDensity", vec: 1, powers: []pow{{dimension.Kg, 1}, {dimension.S, -3}}},
	{name: "JpK", summary: "joule per kelvin: entropy, heat capacity", varName: "entropy", vec: 1, powers: []pow{{dimension.M, 2}, {dimension.Kg, 1}, {dimension.S, -2}, {dimension.K, -1}}},
	{name: "JpkgK", summary: "joule per kilogram-kelvin: specific heat capacity", varName: "specificHeatCapacity", vec: 1, powers: []pow{{dimension.M, 2}, {dimension.S, -2}, {dimension.K, -1}}},
	{summary: "joule per kilogram: specific energy, velocity squared", varName: "specificEnergy", vec: 1, powers: []pow{{dimension.M, 2}, {dimension.S, -2}}},
	{name: "WpmK", summary: "watt per metre-kelvin: thermal conductivity", varName: "thermalConductivity", vec: 1, powers: []pow{{dimension.M, 1}, {dimension.Kg, 1}, {dimension.S, -3}, {dimension.K, -1}}},
	{name: "Vpm", summary: "volt per metre: electric field strength", varName: "electricFieldStrength", vec: 1, powers: []pow{{dimension.M, 1}, {dimension.Kg, 1}, {dimension.S, -3}, {dimension.A, -1}}},
	{name: "Cpm3", summary: "coulomb per cubic metre: electric charge density", varName: "electricChargeDensity", vec: 1, powers: []pow{{dimension.M, -3}, {dimension.S, 1}, {dimension.A, 1}}},
	{name: "Cpm2", summary: "coulomb per square metre: surface charge density, electric displacement", varName: "surfaceChargeDensity", vec: 1, powers: []pow{{dimension.M, -2}, {dimension.S, 1}, {dimension.A, 1}}},
	{name: "Fpm", summary: "farad per metre: permittivity", varName: "permittivity", vec: 1, powers: []pow{{dimension.M, -3}, {dimension.Kg, -1}, {dimension.S, 4}, {dimension.A, 2}}},
	{name: "Hpm", summary: "henry per metre: permeability", varName: "permeability", vec: 1, powers: []pow{{dimension.M, 1}, {dimension.Kg, 1}, {dimension.S, -2}, {dimension.A, -2}}},
	{name: "Jpmol", summary: "joule per mole: molar energy", varName: "molarEnergy", vec: 1, powers: []pow{{dimension.M, 2}, {dimension.Kg, 1}, {dimension.S, -2}, {dimension.Mol, -1}}},
	{name: "JpmolK", summary: "joule per mole-kelvin: molar entropy, molar heat capacity", varName: "molarEntropy", vec: 1, powers: []pow{{dimension.M, 2}, {dimension.Kg, 1}, {dimension.S, -2}, {dimension.K, -1}, {dimension.Mol, -1}}},
	{name: "Cpkg", summary: "coulomb per kilogram: exposure", varName: "exposure", vec: 1, powers: []pow{{dimension.Kg, -1}, {dimension.S, 1}, {dimension.A, 1}}},
	{name: "Gyps", summary: "gray per second: absorbed dose rate", varName: "absorbedDoseRate", vec: 1, powers: []pow{{dimension.M, 2}, {dimension.S, -3}}},
	{name: "katpm3", summary: "katal per cubic metre: catalytic activity concentration", varName: "catalyticActivityConcentration", vec: 1, powers: []pow{{dimension.M, -3}, {dimension.S, -1}, {dimension.Mol, 1}}},
}

var nonSI = []entry{
	{tag: algebra.Base, name: "rad", summary: "radian: plane angle", varName: "angle", vec: 1, powers: []pow{{dimension.Rad, 1}}},
	{tag: algebra.Coherent, name: "sr", summary: "steradian: solid angle", varName: "solidAngle", vec: 1, powers: []pow{{dimension.Rad, 2}}},
}

var (
	lengthFields = []string{
		`func (a {{.Type}}) Length() {{type "m"}} { return {{type "m"}}(length(a[:])) }`,
		`func (a {{.Type}}) SqrLength() {{type "m2"}} { return {{type "m2"}}(lengthSq(a[:])) }`,
	}
	speedFields = []string{
		`func (a {{.Type}}) Speed() {{type "mps"}} { return {{type "mps"}}(length(a[:])) }`,
		`func (a {{.Type}}) SqrSpeed() {{type "m2ps2"}} { return {{type "m2ps2"}}(lengthSq(a[:])) }`,
	}
	accelFields = []string{
		`func (a {{.Type}}) Acceleration() {{type "mps2"}} { return {{type "mps2"}}(length(a[:])) }`,
	}
)

var vectors = []entry{
	{name: "len3", summary: "length: meter", varName: "len", vec: 3, powers: []pow{{dimension.M, 1}}, fields: lengthFields},
	{name: "vel3", summary: "speed: m/s", varName: "speed", vec: 3, powers: []pow{{dimension.M, 1}, {dimension.S, -1}}, fields: speedFields},
	{name: "accel3", summary: "acceleration: m/s²", varName: "accel", vec: 3, powers: []pow{{dimension.M, 1}, {dimension.S, -2}}, fields: accelFields},
	{name: "force3", summary: "newton: force", varName: "force", vec: 3, powers: []pow{{dimension.Kg, 1}, {dimension.M, 1}, {dimension.S, -2}}},
	{name: "len2", summary: "length: meter", varName: "len", vec: 2, powers: []pow{{dimension.M, 1}}, fields: lengthFields},
	{name: "vel2", summary: "speed: m/s", varName: "speed", vec: 2, powers: []pow{{dimension.M, 1}, {dimension.S, -1}}, fields: speedFields},
	{name: "accel2", summary: "acceleration: m/s²", varName: "accel", vec: 2, powers: []pow{{dimension.M, 1}, {dimension.S, -2}}, fields: accelFields},
	{name: "force2", summary: "newton: force", varName: "force", vec: 2, powers: []pow{{dimension.Kg, 1}, {dimension.M, 1}, {dimension.S, -2}}},
}

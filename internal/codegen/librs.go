package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// Markers in lib.rs where each script adds its lines.
const (
	modulesMarker  = "// __PERRO_MODULES__"
	importsMarker  = "// __PERRO_IMPORTS__"
	registryMarker = "// __PERRO_REGISTRY__"
)

const libTemplate = `#[cfg(debug_assertions)]
use std::ffi::CStr;
#[cfg(debug_assertions)]
use std::os::raw::c_char;
use perro_core::script::CreateFn;
use phf::{phf_map, Map};

` + modulesMarker + `
` + importsMarker + `

pub fn get_script_registry() -> &'static Map<&'static str, CreateFn> {
    &SCRIPT_REGISTRY
}

static SCRIPT_REGISTRY: Map<&'static str, CreateFn> = phf_map! {
    ` + registryMarker + `
};

#[cfg(debug_assertions)]
#[unsafe(no_mangle)]
pub extern "C" fn perro_set_project_root(path: *const c_char, name: *const c_char) {
    let path_str = unsafe { CStr::from_ptr(path).to_str().unwrap() };
    let name_str = unsafe { CStr::from_ptr(name).to_str().unwrap() };
    perro_core::asset_io::set_project_root(
        perro_core::asset_io::ProjectRoot::Disk {
            root: std::path::PathBuf::from(path_str),
            name: name_str.to_string(),
        }
    );
}
`

// LibRS renders the crate root that registers every script's constructor.
// Identifiers are sorted so the file only changes when the set does.
func LibRS(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var modules, imports, registry strings.Builder
	for _, id := range sorted {
		fmt.Fprintf(&modules, "pub mod %s;\n", id)
		fmt.Fprintf(&imports, "use %s::%s_create_script;\n", id, id)
		fmt.Fprintf(&registry, "    %q => %s_create_script as CreateFn,\n", id, id)
	}

	return strings.NewReplacer(
		modulesMarker, modules.String()+modulesMarker,
		importsMarker, imports.String()+importsMarker,
		"    "+registryMarker, registry.String()+"    "+registryMarker,
	).Replace(libTemplate)
}
